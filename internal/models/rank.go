package models

// RankOption is one tier of the fixed goal catalog.
type RankOption struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Days  int    `json:"days" yaml:"days"` // consecutive days required
	Emoji string `json:"emoji" yaml:"emoji"`
}

// Label renders the rank as "<emoji> <name>".
func (r RankOption) Label() string {
	return r.Emoji + " " + r.Name
}
