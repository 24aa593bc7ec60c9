package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type Service struct {
	parser Importer
}

func NewService() *Service {
	return &Service{
		parser: NewParser(),
	}
}

// Import parses an uploaded file and rejects files that repeat a shipment code.
func (s *Service) Import(r io.Reader) ([]shipment.Params, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Code]; dup {
			return nil, fmt.Errorf("%w: %s appears more than once in the file", shipment.ErrDuplicateCode, p.Code)
		}

		seen[p.Code] = struct{}{}
	}

	return params, nil
}
