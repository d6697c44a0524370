package logging

import (
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
)

// What an emitter knows about a label
type LabelInfo struct {
	// Empty for anonymous labels
	Name string
	// Enclosing label of local labels, only meaningful if HasParent is set
	ParentId  uint32
	HasParent bool
}

// What an emitter knows about a virtual register
type VirtRegInfo struct {
	// Empty if the register has no name
	Name string
	// Kind the register was created with
	Kind   registers.RegisterKind
	TypeId types.TypeId
	// Physical register assigned by the register allocator, only meaningful if HasPhys is set
	PhysId  uint32
	HasPhys bool
}

// Read-only view of the code emission context used to resolve label and virtual register names.
// Formatters take a nil Emitter and fall back to generic names
type Emitter interface {
	Arch() arch.ArchId
	LabelInfo(id uint32) (LabelInfo, bool)
	VirtRegInfo(id uint32) (VirtRegInfo, bool)
}
