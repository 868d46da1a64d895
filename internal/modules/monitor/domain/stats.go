package domain

// Stats is a point-in-time summary of what the monitor watches
type Stats struct {
	ActiveGroups int `json:"active_groups"`
	Keywords     int `json:"keywords"`
	MinusWords   int `json:"minus_words"`
	HitsLastDay  int `json:"hits_last_day"`
}
