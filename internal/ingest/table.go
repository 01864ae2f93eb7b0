package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"salesapi/internal/shared/domain"
)

// Table est le résultat brut d'un parse CSV réussi
type Table struct {
	Header []string
	Rows   [][]string
}

// Candidats essayés dans l'ordre, l'encodage variant plus lentement
// que le délimiteur
var (
	candidateEncodings  = []string{"utf-8", "latin1", "iso-8859-1"}
	candidateDelimiters = []rune{',', ';', '\t'}
)

// ReadTable lit un fichier CSV en essayant chaque couple (encodage,
// délimiteur) jusqu'au premier parse sans erreur de décodage ni erreur
// structurelle. Les lignes individuellement malformées d'un parse
// par ailleurs réussi sont ignorées avec un avertissement. Si tous les
// candidats échouent, l'opération échoue avec un DataFormatError
// nommant le fichier.
func ReadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.DataFormatError{Path: path, Err: err}
	}

	for _, enc := range candidateEncodings {
		text, err := decode(data, enc)
		if err != nil {
			log.Printf("ingest: decoding error with encoding %s: %v", enc, err)
			continue
		}
		for _, delim := range candidateDelimiters {
			table, err := parse(text, delim)
			if err != nil {
				log.Printf("ingest: parsing error with encoding %s and delimiter %q: %v", enc, delim, err)
				continue
			}
			return table, nil
		}
	}

	return nil, &domain.DataFormatError{Path: path}
}

// decode convertit le contenu du fichier en UTF-8 depuis l'encodage
// candidat. latin1 et iso-8859-1 désignent la même table; le décodage
// par table ne peut pas échouer, comme en Python.
func decode(data []byte, encoding string) (string, error) {
	switch encoding {
	case "utf-8":
		if !utf8.Valid(data) {
			return "", errors.New("invalid UTF-8 byte sequence")
		}
		return string(data), nil
	case "latin1", "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unknown encoding %s", encoding)
	}
}

// parse tente un parse complet avec un délimiteur donné. Une erreur de
// quoting ou un en-tête de moins de quatre colonnes (le schéma impose
// famille, nom, id, prix) est une erreur structurelle: le couple
// candidat est rejeté. Une ligne au mauvais nombre de champs est
// seulement ignorée.
func parse(text string, delim rune) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("header has %d columns, at least 4 expected", len(header))
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				log.Printf("ingest: skipping malformed line %d: %v", parseErr.Line, err)
				continue
			}
			return nil, err
		}
		rows = append(rows, record)
	}

	return &Table{Header: header, Rows: rows}, nil
}
