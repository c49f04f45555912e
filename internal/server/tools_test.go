package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	require.NotEmpty(t, tools)

	expected := []string{
		"image_load",
		"image_dimensions",
		"image_crop_work_area",
		"image_sample_color",
		"annotation_import_mask",
		"annotation_closed_curve",
		"annotation_import_label_map",
		"annotation_list_blobs",
		"annotation_get_blob",
		"annotation_clicked_blob",
		"annotation_statistics",
		"annotation_union",
		"annotation_subtract",
		"annotation_cut",
		"annotation_split",
		"annotation_edit_border",
		"annotation_carve_hole",
		"annotation_set_class",
		"annotation_group",
		"annotation_remove",
		"annotation_export",
		"annotation_load",
		"annotation_render_overlay",
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		assert.False(t, names[tool.Name], "duplicate tool %s", tool.Name)
		names[tool.Name] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected tool %s not found", name)
	}
	assert.Len(t, tools, len(expected))
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)
			require.NotNil(t, tool.InputSchema)
			assert.Equal(t, "object", tool.InputSchema["type"])

			properties, ok := tool.InputSchema["properties"].(props)
			require.True(t, ok, "properties should be a map")

			if req, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range req {
					assert.Contains(t, properties, r, "required field %s has no property", r)
				}
			}
		})
	}
}

func TestToolsDispatch(t *testing.T) {
	s := New(nil, nil)
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, []byte(`{}`))
		if err != nil {
			assert.NotContains(t, err.Error(), "unknown tool", "tool %s is listed but not dispatched", tool.Name)
		}
	}
	_, err := s.executeTool("image_ocr_full", []byte(`{}`))
	assert.ErrorContains(t, err, "unknown tool")
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil, nil)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	require.True(t, ok)
	assert.Equal(t, len(GetToolDefinitions()), len(tools))
}
