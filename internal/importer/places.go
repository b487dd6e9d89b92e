package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nikbrunner/bmg/internal/model"
)

// ErrUnexpectedShape is returned when a document decodes but is not a
// bookmark tree.
var ErrUnexpectedShape = errors.New("unexpected bookmark tree shape")

// ParsePlacesJSON decodes a Firefox places export (typeCode/children tree).
func ParsePlacesJSON(r io.Reader) (*model.RawNode, error) {
	var root model.RawNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return nil, fmt.Errorf("decode places json: %w", err)
	}

	if !root.IsContainer() {
		return nil, fmt.Errorf("%w: root is not a container", ErrUnexpectedShape)
	}

	return &root, nil
}
