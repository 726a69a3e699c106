package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Model represents a single model in the OpenAI API format
type Model struct {
	Id      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the response for GET /v1/models
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewModel returns a model owned by the default owner
func NewModel(id string, created int64) Model {
	return Model{
		Id:      id,
		Object:  ObjectModel,
		Created: created,
		OwnedBy: OwnedByDefault,
	}
}

// NewModelList returns a list wrapping the models. Data is never nil.
func NewModelList(models ...Model) ModelList {
	if models == nil {
		models = []Model{}
	}
	return ModelList{
		Object: ObjectList,
		Data:   models,
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m ModelList) String() string {
	return Stringify(m)
}
