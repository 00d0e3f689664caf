// Package cli renders engine results and reads ciphertext for the
// cryptanalyst command, the way the teacher's own cli package renders
// processing results and reads console input for CryptoLens.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"
)

// ReadCiphertext reads ciphertext from path, or from stdin when path is
// "-". A blank path is also treated as stdin, matching the teacher's
// console-input fallback of accepting an empty line as "use the
// default".
func ReadCiphertext(path string) (string, error) {
	var data []byte
	var err error

	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}

	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", errors.New("ciphertext input is empty")
	}
	return text, nil
}
