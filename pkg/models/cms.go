package models

type CMSConfig struct {
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []Collection `yaml:"collections"`
}

type Collection struct {
	Name         string  `yaml:"name"`
	Label        string  `yaml:"label"`
	Folder       string  `yaml:"folder"`
	Path         string  `yaml:"path"`
	Extension    string  `yaml:"extension"`
	MediaFolder  string  `yaml:"media_folder,omitempty"`
	PublicFolder string  `yaml:"public_folder,omitempty"`
	Fields       []Field `yaml:"fields"`
}

type Field struct {
	Name    string      `yaml:"name"`
	Widget  string      `yaml:"widget"`
	Default interface{} `yaml:"default,omitempty"`
}

// FindCollection returns the named collection, or nil when absent.
func (c *CMSConfig) FindCollection(name string) *Collection {
	for i := range c.Collections {
		if c.Collections[i].Name == name {
			return &c.Collections[i]
		}
	}
	return nil
}
