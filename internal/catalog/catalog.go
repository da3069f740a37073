package catalog

// Class is a course that quizzes and chat sessions are scoped to
type Class struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var builtin = []Class{
	{ID: "cs101", Name: "Computer Science 101", Description: "Introduction to programming, algorithms, and data structures"},
	{ID: "math201", Name: "Calculus II", Description: "Advanced integration, series, and differential equations"},
	{ID: "phys150", Name: "Physics I", Description: "Mechanics, energy, and motion fundamentals"},
	{ID: "eng210", Name: "Engineering Design", Description: "Design process, prototyping, and project management"},
}

// Catalog resolves class ids to display names. Unknown ids are not an
// error: class ids are opaque and the id itself is used as the name.
type Catalog struct {
	classes []Class
	byID    map[string]Class
}

// New creates a catalog from the given classes
func New(classes []Class) *Catalog {
	c := &Catalog{
		classes: append([]Class(nil), classes...),
		byID:    make(map[string]Class, len(classes)),
	}
	for _, cls := range classes {
		c.byID[cls.ID] = cls
	}
	return c
}

// Default returns the built-in class list
func Default() *Catalog {
	return New(builtin)
}

// DisplayName returns the class name, or the id when the class is unknown
func (c *Catalog) DisplayName(classID string) string {
	if cls, ok := c.byID[classID]; ok {
		return cls.Name
	}
	return classID
}

// List returns all classes in declaration order
func (c *Catalog) List() []Class {
	return append([]Class(nil), c.classes...)
}
