package mosaic

// factory implements the factory pattern for mosaic's handle types,
// mirroring the teacher repo's global Factory value.
type factory struct{}

// Factory is the global factory instance for creating mosaic handles.
var Factory factory

// NewBuilder returns an empty Builder.
func (f factory) NewBuilder() *Builder { return &Builder{} }

// NewRegistry returns an empty Registry, for callers assembling an
// Engine by hand rather than through a Builder (tests, mainly).
func (f factory) NewRegistry() *Registry { return NewRegistry() }

// FactoryNewComponent returns the handle for component type T,
// registering it on first use.
func FactoryNewComponent[T any]() ComponentType[T] { return ComponentOf[T]() }

// FactoryNewResource returns the handle for resource type T,
// registering it on first use.
func FactoryNewResource[T any]() ResourceType[T] { return ResourceOf[T]() }
