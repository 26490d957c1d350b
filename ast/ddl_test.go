package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableClone_NoAliasing(t *testing.T) {
	orig := &CreateTable{
		Name: &QualifiedName{Name: &Identifier{Name: "accounts"}},
		Columns: []*ColumnDef{
			{Name: &Identifier{Name: "id"}, Type: &TypeName{Name: "bigint"}, Constraints: []*ColumnConstraint{{Kind: ColumnPrimaryKey}}},
		},
	}

	clone := orig.Clone().(*CreateTable)
	clone.Columns[0].Name.Name = "renamed"
	clone.Columns[0].Constraints[0].Kind = ColumnUnique

	assert.Equal(t, "id", orig.Columns[0].Name.Name)
	assert.Equal(t, ColumnPrimaryKey, orig.Columns[0].Constraints[0].Kind)
}

func TestAlterTable_DropColumnAction(t *testing.T) {
	alt := &AlterTable{
		Name:   &QualifiedName{Name: &Identifier{Name: "accounts"}},
		Action: &DropColumn{Name: &Identifier{Name: "legacy_flag"}},
	}

	clone := alt.Clone().(*AlterTable)
	action, ok := clone.Action.(*DropColumn)
	require.True(t, ok)
	assert.Equal(t, "legacy_flag", action.Name.Name)
}

func TestSequenceOptionsClone_IndependentPointers(t *testing.T) {
	start := int64(1)
	orig := SequenceOptions{Start: &start}
	clone := orig.Clone()
	*clone.Start = 99

	assert.Equal(t, int64(1), *orig.Start)
}

func TestCreateIndexClone_WithMapCopy(t *testing.T) {
	orig := &CreateIndex{
		Name:  &Identifier{Name: "idx_accounts_email"},
		Table: &QualifiedName{Name: &Identifier{Name: "accounts"}},
		With:  map[string]string{"fillfactor": "90"},
	}
	clone := orig.Clone().(*CreateIndex)
	clone.With["fillfactor"] = "70"

	assert.Equal(t, "90", orig.With["fillfactor"])
}
