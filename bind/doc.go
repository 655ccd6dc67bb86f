// Package bind declares raw struct layouts and builds the binding registry
// that pairs view properties with raw fields.
//
// A Layout names the fields of one fixed-size raw structure, each with an
// explicit byte offset. Layouts are declared either as literal Field tables
// or parsed from a descriptor struct whose fields carry raw tags:
//
//	type PlayerRaw struct {
//	    Health float32     `raw:"@0x00"`
//	    Ammo   uint32      `raw:"@0x04"`
//	    Tint   marshal.RGB `raw:"@0x08,type=rgb"`
//	    Name   string      `raw:"@0x14,size=16"`
//	    Weapon WeaponRaw   `raw:"@0x24"`
//	}
//
// Every declared field requires an explicit @offset; a missing offset is a
// compile-phase error, never a silent default. Fields may append indirection
// steps (deref=N, add=N) for data reached through pointers in the target.
//
// A Registry is built once per concrete view type and cached globally by
// type identity, so reflection runs once no matter how many nodes of a type
// exist. Properties that name no layout field are logged through the package
// logger and excluded from synchronization; a terminal property whose Go
// type disagrees with its field's value type is a fatal declaration error.
package bind
