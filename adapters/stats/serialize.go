package stats

import (
	"encoding/json"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// Serialize produces the transport envelope for a result: the test's own
// fields plus the kind discriminator and the interpretation string at the
// top level. Marshaling goes through a key map so the output is emitted with
// sorted keys, making repeated runs on identical input byte-identical.
func Serialize(result analysis.TestResult, interpretation string) ([]byte, error) {
	inner, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "marshal test result")
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(inner, &fields); err != nil {
		return nil, errors.Wrap(err, "normalize test result")
	}

	kind, err := json.Marshal(result.Kind())
	if err != nil {
		return nil, errors.Wrap(err, "marshal kind tag")
	}
	fields["kind"] = kind

	text, err := json.Marshal(interpretation)
	if err != nil {
		return nil, errors.Wrap(err, "marshal interpretation")
	}
	fields["interpretation"] = text

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "marshal result envelope")
	}
	return out, nil
}
