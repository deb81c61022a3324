package interfaces

import "context"

// IQRCodeRenderer turns a payment code into something an <img> tag can show:
// a data URI or an image URL.
type IQRCodeRenderer interface {
	Render(ctx context.Context, content string) (string, error)
}
