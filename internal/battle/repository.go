package battle

//go:generate mockgen -destination=mock/mock_data_repository.go -package=mockbattle -source=repository.go

// DataRepository resolves content ids to definitions. Entity literals in the
// DSL become lazy lookups against it.
type DataRepository interface {
	Mark(id string) (BaseMark, error)
	Skill(id string) (Skill, error)
	Species(id string) (Species, error)
}
