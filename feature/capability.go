package feature

import "hash/fnv"

// LoadFunc installs a capability; UnloadFunc reverses it. Both receive the
// owning plugin, the PROVIDE descriptor itself, and the REGISTER/CALLBACK
// descriptor that preceded it (nil if none).
type LoadFunc func(p Plugin, self, reg Descriptor) bool
type UnloadFunc func(p Plugin, self, reg Descriptor) bool

// Wildcard is the subtype value that makes a Capability match any subtype
// of the same category (the DB_ANY pattern from spec.md scenario 3).
const Wildcard = "*"

// Capability is the reference Descriptor implementation: a two-part
// "category subtype" capability signature (e.g. "db sqlite", "crypter
// aes-128-cbc") with optional wildcard matching on subtype. It is a
// pointer type deliberately: the registry rebinds a RegisteredFeature's
// canonical descriptor by identity (==) when its current provider is
// unregistered, mirroring the original's `registered->feature ==
// provided->feature` pointer check.
type Capability struct {
	kind     Kind
	category string
	subtype  string

	load   LoadFunc
	unload UnloadFunc
}

// NewProvide builds a PROVIDE descriptor for category/subtype, backed by
// load/unload. A nil load always fails; a nil unload is a no-op success.
func NewProvide(category, subtype string, load LoadFunc, unload UnloadFunc) *Capability {
	return &Capability{kind: Provide, category: category, subtype: subtype, load: load, unload: unload}
}

// NewDepends builds a hard DEPENDS descriptor on category/subtype.
func NewDepends(category, subtype string) *Capability {
	return &Capability{kind: Depends, category: category, subtype: subtype}
}

// NewSoftDepends builds a soft SDEPEND descriptor on category/subtype.
func NewSoftDepends(category, subtype string) *Capability {
	return &Capability{kind: SDepend, category: category, subtype: subtype}
}

// NewRegister builds a REGISTER context descriptor.
func NewRegister() *Capability {
	return &Capability{kind: Register}
}

// NewCallback builds a CALLBACK context descriptor.
func NewCallback() *Capability {
	return &Capability{kind: Callback}
}

func (c *Capability) Kind() Kind { return c.kind }

func (c *Capability) Hash() uint32 {
	h := fnv.New32a()
	h.Write([]byte(c.category))
	h.Write([]byte{0})
	h.Write([]byte(c.subtype))
	return h.Sum32()
}

func (c *Capability) Equals(other Descriptor) bool {
	o, ok := other.(*Capability)
	if !ok {
		return false
	}
	return c.category == o.category && c.subtype == o.subtype
}

func (c *Capability) Matches(other Descriptor) bool {
	o, ok := other.(*Capability)
	if !ok {
		return false
	}
	if c.category != o.category {
		return false
	}
	if c.subtype == Wildcard || o.subtype == Wildcard {
		return true
	}
	return c.subtype == o.subtype
}

func (c *Capability) String() string {
	if c.subtype == "" {
		return c.category
	}
	return c.category + " " + c.subtype
}

func (c *Capability) Load(p Plugin, self, reg Descriptor) bool {
	if c.load == nil {
		return false
	}
	return c.load(p, self, reg)
}

func (c *Capability) Unload(p Plugin, self, reg Descriptor) bool {
	if c.unload == nil {
		return true
	}
	return c.unload(p, self, reg)
}

var _ Descriptor = &Capability{}
