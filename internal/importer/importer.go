package importer

import (
	"io"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type Importer interface {
	Parse(r io.Reader) ([]shipment.Params, error)
}
