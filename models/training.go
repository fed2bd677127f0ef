package models

// TrainingReport describes one fit of the install status classifier
type TrainingReport struct {
	Features      []string `json:"features"`
	Target        string   `json:"target"`
	Classes       []string `json:"classes"`
	Rows          int      `json:"rows"`
	TrainRows     int      `json:"trainRows"`
	TestRows      int      `json:"testRows"`
	Epochs        int      `json:"epochs"`
	FinalLoss     float64  `json:"finalLoss"`
	TrainAccuracy float64  `json:"trainAccuracy"`
	TestAccuracy  float64  `json:"testAccuracy"`
}
