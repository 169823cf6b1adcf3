package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/portal-api/internal/domain/model"
)

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, ValidateFilter(""))
	assert.NoError(t, ValidateFilter("   "))
	assert.NoError(t, ValidateFilter(`[?status == 'active']`))
	assert.Error(t, ValidateFilter("[?status =="))
}

func TestFilterList_Empty(t *testing.T) {
	out, err := filterList([]*model.Task{}, `[?status == 'todo']`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFilterList_NoExpression(t *testing.T) {
	in := []*model.Task{{ID: "t1"}}
	out, err := filterList(in, "")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFilterList_Projection(t *testing.T) {
	in := []*model.Task{
		{ID: "t1", Status: model.TaskStatusTodo, Priority: model.PriorityHigh},
		{ID: "t2", Status: model.TaskStatusCompleted, Priority: model.PriorityLow},
		{ID: "t3", Status: model.TaskStatusTodo, Priority: model.PriorityLow},
	}

	out, err := filterList(in, `[?status == 'todo']`)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, "t3", out[1].ID)

	out, err = filterList(in, `[?status == 'todo' && priority == 'high']`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)
}

func TestFilterList_NoMatches(t *testing.T) {
	in := []*model.Task{{ID: "t1", Status: model.TaskStatusTodo}}
	out, err := filterList(in, `[?status == 'review']`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFilterList_NonListResult(t *testing.T) {
	in := []*model.Task{{ID: "t1"}}
	_, err := filterList(in, `[0].id`)
	assert.Error(t, err)
}
