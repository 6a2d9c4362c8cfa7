package export

// PropertyType selects the XML element used for a custom property.
type PropertyType string

const (
	PropertyBoolean PropertyType = "booleanproperty"
	PropertyString  PropertyType = "stringproperty"
	PropertyDouble  PropertyType = "doubleproperty"
	PropertyDate    PropertyType = "dateproperty"
)

// Property is one typed key/value pair attached to an exported record.
type Property struct {
	Type  PropertyType
	Name  string
	Value string
}

// ExtendsCommonFields lets host modules attach custom typed metadata to
// exported customer, item and demand records. The export pipeline calls
// this interface only; it never knows concrete extension types.
type ExtendsCommonFields interface {
	CommonFields() []Property
}

func writeProperties(pw *planWriter, props []Property) {
	for _, p := range props {
		pw.printf("<%s name=%s value=%s/>\n", p.Type, quoteAttr(p.Name), quoteAttr(p.Value))
	}
}

// commonFieldsOf returns the property triplets of a record when it
// implements the extension interface, nil otherwise.
func commonFieldsOf(record any) []Property {
	if ext, ok := record.(ExtendsCommonFields); ok {
		return ext.CommonFields()
	}
	return nil
}
