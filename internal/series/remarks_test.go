package series

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRemarks(t *testing.T) {
	tests := []struct {
		name    string
		remark  string
		remarks []string
		want    string
	}{
		{"single remark", "Estimation", nil, "Estimation"},
		{"list", "", []string{"Capteur défectueux", "Estimation"}, "Capteur défectueux • Estimation"},
		{"remark first", "Estimation", []string{"Capteur défectueux"}, "Estimation • Capteur défectueux"},
		{"dedupe keeps first", "A", []string{"B", "A", " B "}, "A • B"},
		{"blank entries dropped", "  ", []string{"", "\t", "C"}, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NormalizeRemarks(tt.remark, tt.remarks)
			if assert.NotNil(t, meta) {
				assert.Equal(t, tt.want, meta.Comment)
			}
		})
	}
}

func TestNormalizeRemarks_Empty(t *testing.T) {
	assert.Nil(t, NormalizeRemarks("", nil))
	assert.Nil(t, NormalizeRemarks(" ", []string{"", "  "}))
	assert.Equal(t, "", RemarkComment("", nil))
}

func TestNormalizeRemarks_CappedAtMax(t *testing.T) {
	var remarks []string
	for i := range 15 {
		remarks = append(remarks, fmt.Sprintf("r%d", i))
	}

	comment := RemarkComment("", remarks)
	parts := strings.Split(comment, RemarkSeparator)

	assert.Len(t, parts, MaxRemarks)
	assert.Equal(t, "r0", parts[0])
	assert.Equal(t, "r9", parts[MaxRemarks-1])
}
