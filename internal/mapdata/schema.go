package mapdata

// EntryDefinition models the JSON contract for a single designer-authored
// map bundle entry. It is shared with the schema generator (cmd/schema) so
// editor tooling gets a machine-readable validation document, the way
// mine-and-die/server/effects/catalog/schema.go shares EntryDefinition with
// its own cmd/schema tool.
type EntryDefinition struct {
	Name   string     `json:"name" jsonschema:"title=Map name,pattern=^[a-z0-9-]+$,description=Display name shown by get_map_name_char"`
	SizeX  int        `json:"sizeX" jsonschema:"title=Size X,minimum=1,maximum=20,description=Walkable volume extent along X"`
	SizeY  int        `json:"sizeY" jsonschema:"title=Size Y,minimum=1,maximum=20,description=Walkable volume extent along Y"`
	SizeZ  int        `json:"sizeZ" jsonschema:"title=Size Z,minimum=1,maximum=20,description=Walkable volume extent along Z"`
	DoorX  int        `json:"doorX" jsonschema:"title=Door X,minimum=0,description=Door cell X coordinate"`
	DoorY  int        `json:"doorY" jsonschema:"title=Door Y,minimum=0,description=Door cell Y coordinate"`
	DoorZ  int        `json:"doorZ" jsonschema:"title=Door Z,minimum=0,description=Door cell Z coordinate"`
	Layers [][]string `json:"layers" jsonschema:"title=Layers,description=size_z slices of size_y row strings, each of length size_x; '#' wall, any other character walkable"`
}

// FileDefinitions represents the contents of a designer-authored map
// bundle JSON document: an array of entries, loaded in order.
type FileDefinitions []EntryDefinition
