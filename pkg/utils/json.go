package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata qualquer valor (ou JSON já serializado) com tabulação.
// JSON inválido em []byte é devolvido como veio.
func PrettyJson(in any) string {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		if buffer, err = json.Marshal(in); err != nil {
			return ""
		}
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
