package domain

// Department is an organisational unit a user may belong to.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Designation is a job title a user may carry.
type Designation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
