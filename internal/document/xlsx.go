package document

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xxxsen/examprep/internal/model"
)

const (
	XLSXMime       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	flashcardSheet = "Flashcards"
)

// BuildFlashcardsXLSX writes one card per row under a Question/Answer header.
func BuildFlashcardsXLSX(code, name string, cards []model.Flashcard) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", flashcardSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	if err := f.SetSheetRow(flashcardSheet, "A1", &[]interface{}{"#", "Question", "Answer"}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(flashcardSheet, "A1", "C1", header); err != nil {
		return nil, err
	}
	for i, card := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(flashcardSheet, cell, &[]interface{}{i + 1, card.Question, card.Answer}); err != nil {
			return nil, err
		}
	}
	if len(cards) > 0 {
		last, _ := excelize.CoordinatesToCellName(3, len(cards)+1)
		if err := f.SetCellStyle(flashcardSheet, "A2", last, wrap); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(flashcardSheet, "A", "A", 5)
	_ = f.SetColWidth(flashcardSheet, "B", "C", 60)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return &Document{
		Filename: fmt.Sprintf("%s_%s_Flashcards.xlsx", code, strings.ReplaceAll(name, " ", "_")),
		MIME:     XLSXMime,
		Data:     buf.Bytes(),
	}, nil
}
