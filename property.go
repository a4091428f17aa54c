package tilemap

// LoadProperties reads the <property> entries of the <properties> child of n.
// The result is empty if there is no such child. A repeated name keeps the
// last value declared.
func LoadProperties(n *Node) Properties {
	p := make(Properties)

	container := n.First("properties")
	if container == nil {
		return p
	}

	for _, property := range container.Children("property") {
		p[property.Attr("name", "")] = property.Attr("value", "")
	}

	return p
}
