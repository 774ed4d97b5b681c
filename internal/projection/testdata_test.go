package projection

type testEntity struct {
	ID        int
	Name      string
	FirstName string
	LastName  string
}

var testEntityFields = NewFields(
	NewField("Id", func(e testEntity) any { return e.ID }),
	NewField("Name", func(e testEntity) any { return e.Name }),
	NewField("FirstName", func(e testEntity) any { return e.FirstName }),
	NewField("LastName", func(e testEntity) any { return e.LastName }),
)

type testDto struct {
	ID          int
	Name        string
	Description string
}

var testDtoFields = NewFields(
	NewField("id", func(d testDto) any { return d.ID }),
	NewField("name", func(d testDto) any { return d.Name }),
	NewField("description", func(d testDto) any { return d.Description }),
)

func ids(items []testEntity) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func names(items []testEntity) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
