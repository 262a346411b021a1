package response

import "github.com/gofiber/fiber/v2"

// Envelope is the JSON body of every API response.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int64      `json:"count,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type Options struct {
	StatusCode int
	Message    string
	Data       interface{}
	Count      *int64
	Error      interface{}
}

// Writer renders envelopes. In production the detail of 400 errors is hidden.
type Writer struct {
	production bool
}

func NewWriter(production bool) *Writer {
	return &Writer{production: production}
}

func (w *Writer) Send(c *fiber.Ctx, opts Options) error {
	if opts.StatusCode == 0 {
		opts.StatusCode = fiber.StatusOK
	}

	env := Envelope{
		Status:  opts.StatusCode,
		Message: opts.Message,
		Data:    opts.Data,
		Count:   opts.Count,
		Error:   opts.Error,
	}
	if opts.StatusCode == fiber.StatusBadRequest && opts.Error != nil && w.production {
		env.Message = "Bad request"
		env.Error = nil
	}
	return c.Status(opts.StatusCode).JSON(env)
}
