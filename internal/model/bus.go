package model

// Bus is a network node. Exactly one bus in a System must have Slack set.
type Bus struct {
	Name  string
	KV    float64
	Type  string
	Lat   float64
	Lon   float64
	Slack bool
}
