package emitter

import (
	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
	"github.com/tidwall/btree"
)

// Label known by a code holder
type LabelEntry struct {
	Id   uint32
	Name string
	// Enclosing label of local labels
	ParentId  uint32
	HasParent bool
	// Offset of the label in the code buffer, only meaningful once bound
	Offset int
	Bound  bool
}

// Virtual register created by a code holder
type VirtReg struct {
	Id     uint32
	Name   string
	Kind   registers.RegisterKind
	TypeId types.TypeId
	// Physical register id assigned by the register allocator
	PhysId  uint32
	HasPhys bool
}

type labelKey struct {
	parent    uint32
	hasParent bool
	name      string
}

// Keeps the labels and virtual registers of the code being generated for one architecture.
// It is the naming context the formatters query to resolve labels and virtual registers
type CodeHolder struct {
	arch         arch.ArchId
	labels       btree.Map[uint32, *LabelEntry]
	labelsByName map[labelKey]uint32
	virtRegs     []*VirtReg
}

func NewCodeHolder(archId arch.ArchId) (*CodeHolder, error) {
	if _, err := arch.Lookup(archId); err != nil {
		return nil, err
	}

	return &CodeHolder{
		arch:         archId,
		labelsByName: make(map[labelKey]uint32),
	}, nil
}

func (c *CodeHolder) Arch() arch.ArchId {
	return c.arch
}

func (c *CodeHolder) addLabel(entry *LabelEntry) uint32 {
	entry.Id = uint32(c.labels.Len())
	c.labels.Set(entry.Id, entry)
	return entry.Id
}

// Creates an anonymous label
func (c *CodeHolder) NewLabel() uint32 {
	return c.addLabel(&LabelEntry{})
}

// Creates a global named label
func (c *CodeHolder) NewNamedLabel(name string) (uint32, error) {
	return c.newNamedLabel(labelKey{name: name})
}

// Creates a named label local to the given parent label
func (c *CodeHolder) NewLocalLabel(parent uint32, name string) (uint32, error) {
	if _, ok := c.labels.Get(parent); !ok {
		return 0, utils.MakeError(ErrUnknownLabel, "parent label %v", parent)
	}

	return c.newNamedLabel(labelKey{parent: parent, hasParent: true, name: name})
}

func (c *CodeHolder) newNamedLabel(key labelKey) (uint32, error) {
	if key.name == "" {
		return 0, utils.MakeError(ErrUnknownLabel, "named labels need a name")
	}

	if id, exists := c.labelsByName[key]; exists {
		return 0, utils.MakeError(ErrDuplicateLabel, "'%v' already defined as label %v", key.name, id)
	}

	id := c.addLabel(&LabelEntry{
		Name:      key.name,
		ParentId:  key.parent,
		HasParent: key.hasParent,
	})

	c.labelsByName[key] = id
	return id, nil
}

func (c *CodeHolder) Label(id uint32) (*LabelEntry, bool) {
	return c.labels.Get(id)
}

// Returns the global label with the given name
func (c *CodeHolder) LabelByName(name string) (*LabelEntry, bool) {
	id, ok := c.labelsByName[labelKey{name: name}]
	if !ok {
		return nil, false
	}

	return c.Label(id)
}

func (c *CodeHolder) LabelCount() int {
	return c.labels.Len()
}

// Returns all labels sorted by id
func (c *CodeHolder) Labels() []*LabelEntry {
	labels := make([]*LabelEntry, 0, c.labels.Len())

	c.labels.Scan(func(_ uint32, entry *LabelEntry) bool {
		labels = append(labels, entry)
		return true
	})

	return labels
}

// Binds a label to an offset of the code buffer. A label can only be bound once
func (c *CodeHolder) BindLabel(id uint32, offset int) error {
	entry, ok := c.labels.Get(id)
	if !ok {
		return utils.MakeError(ErrUnknownLabel, "label %v", id)
	}

	if entry.Bound {
		return utils.MakeError(ErrLabelAlreadyBound, "label %v bound at offset %v", id, entry.Offset)
	}

	entry.Offset = offset
	entry.Bound = true
	return nil
}

// Creates a virtual register and returns its id
func (c *CodeHolder) NewVirtReg(kind registers.RegisterKind, typeId types.TypeId, name string) uint32 {
	id := registers.VirtId(uint32(len(c.virtRegs)))

	c.virtRegs = append(c.virtRegs, &VirtReg{
		Id:     id,
		Name:   name,
		Kind:   kind,
		TypeId: typeId,
	})

	return id
}

func (c *CodeHolder) VirtReg(id uint32) (*VirtReg, bool) {
	if !registers.IsVirtId(id) {
		return nil, false
	}

	index := registers.VirtIndex(id)
	if index >= uint32(len(c.virtRegs)) {
		return nil, false
	}

	return c.virtRegs[index], true
}

func (c *CodeHolder) VirtRegCount() int {
	return len(c.virtRegs)
}

// Records the physical register the allocator assigned to a virtual register
func (c *CodeHolder) AssignPhys(id uint32, physId uint32) error {
	reg, ok := c.VirtReg(id)
	if !ok {
		return utils.MakeError(ErrUnknownVirtReg, "register id %v", id)
	}

	reg.PhysId = physId
	reg.HasPhys = true
	return nil
}

func (c *CodeHolder) LabelInfo(id uint32) (logging.LabelInfo, bool) {
	entry, ok := c.labels.Get(id)
	if !ok {
		return logging.LabelInfo{}, false
	}

	return logging.LabelInfo{
		Name:      entry.Name,
		ParentId:  entry.ParentId,
		HasParent: entry.HasParent,
	}, true
}

func (c *CodeHolder) VirtRegInfo(id uint32) (logging.VirtRegInfo, bool) {
	reg, ok := c.VirtReg(id)
	if !ok {
		return logging.VirtRegInfo{}, false
	}

	return logging.VirtRegInfo{
		Name:    reg.Name,
		Kind:    reg.Kind,
		TypeId:  reg.TypeId,
		PhysId:  reg.PhysId,
		HasPhys: reg.HasPhys,
	}, true
}
