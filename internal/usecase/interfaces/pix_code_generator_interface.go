package interfaces

import "zerovicio/internal/domain/pix"

// IPixCodeGenerator fabricates copy-and-paste codes for mock charges.
type IPixCodeGenerator interface {
	Generate(p pix.Params) (string, error)
}
