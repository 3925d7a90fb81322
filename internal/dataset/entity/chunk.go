package entity

type Chunk struct {
	Index int
	Texts []string
}
