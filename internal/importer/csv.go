package importer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeUpload converte os bytes crus do upload em texto UTF-8.
// Remove o BOM se presente e, quando o conteúdo não é UTF-8 válido, tenta
// decodificar como Latin-1 (exportações brasileiras de planilha frequentemente
// chegam em ISO-8859-1).
func DecodeUpload(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, bomUTF8)

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// ParseCSV transforma o texto bruto de um CSV em cabeçalhos + linhas.
// Cada linha vira um mapa de cabeçalho-minúsculo para valor. Linhas em branco
// são ignoradas e linhas com menos valores que cabeçalhos são descartadas sem
// preenchimento.
//
// Não é um parser RFC-4180: vírgulas entre aspas e quebras de linha embutidas
// não são tratadas, apenas aspas envolventes são removidas. O formato aceito é
// o mesmo dos exports que alimentam o assistente.
func ParseCSV(text string) ([]string, []map[string]string, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers := splitLine(lines[0])
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		if len(values) < len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range lowered {
			row[h] = values[i]
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		out[i] = strings.TrimSpace(p)
	}
	return out
}
