package models

// Agent is one member of the support roster. Skills maps a skill category
// name to a proficiency rating on a 0-10 scale. CurrentLoad is the number of
// open tickets at snapshot time; the allocator increments it as it assigns.
type Agent struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Skills          map[string]float64 `json:"skills"`
	ExperienceLevel float64            `json:"experience_level"`
	CurrentLoad     int                `json:"current_load"`
	Available       bool               `json:"available"`
}

// Ticket is one incoming support request. Priority is optional: 0 means
// "not set, infer from text". CreatedAt is an optional unix timestamp used
// by ordered dataset sources; the engine never reads it.
type Ticket struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority,omitempty"`
	CreatedAt   int64  `json:"creation_timestamp,omitempty"`
}

// Text returns the free text the extractor and classifier operate on.
func (t Ticket) Text() string {
	return t.Title + " " + t.Description
}
