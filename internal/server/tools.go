package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func propDefault(typ, description string, def interface{}) map[string]interface{} {
	p := prop(typ, description)
	p["default"] = def
	return p
}

func schema(required []string, props map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// ToolDefinitions returns all available tools
func ToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "figure_find",
			Description: "List the figures in a directory. Panel files are named <id><letter>_<description>.<ext>; each figure reports its id, its base name (<id>_<description>) and its panel letters.",
			InputSchema: schema([]string{"search_dir"}, map[string]interface{}{
				"search_dir": prop("string", "Absolute path to the directory holding panel files"),
			}),
		},
		{
			Name:        "figure_tile",
			Description: "Tile the panels of one figure into a grid composite with a bold letter label on each panel, and write it with DPI metadata.",
			InputSchema: schema([]string{"figure_base", "search_dir", "output"}, map[string]interface{}{
				"figure_base": prop("string", "Figure name such as 01_workflow; panels are matched by its id"),
				"search_dir":  prop("string", "Absolute path to the directory holding panel files"),
				"output":      prop("string", "Absolute output path; the extension selects the format"),
				"spacing":     propDefault("integer", "Gap between panels in pixels", 20),
				"dpi":         propDefault("integer", "Resolution recorded in the output", 300),
				"strict":      propDefault("boolean", "Fail on duplicate panel letters", false),
			}),
		},
		{
			Name:        "image_info",
			Description: "Get the width, height, format and alpha channel presence of an image file.",
			InputSchema: schema([]string{"path"}, map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
			}),
		},
		{
			Name:        "image_crop_content",
			Description: "Crop an image to the bounding box of its dark content plus a margin, downscaling it to fit a maximum size.",
			InputSchema: schema([]string{"input", "output"}, map[string]interface{}{
				"input":      prop("string", "Absolute path to the image file"),
				"output":     prop("string", "Absolute output path; may equal input"),
				"margin":     prop("integer", "Pixels kept around the content"),
				"threshold":  prop("integer", "Gray level (0-255) below which a pixel is content"),
				"max_width":  prop("integer", "Maximum output width; 0 disables resizing"),
				"max_height": prop("integer", "Maximum output height; 0 disables resizing"),
				"dpi":        propDefault("integer", "Resolution recorded in the output", 300),
			}),
		},
		{
			Name:        "image_optimize",
			Description: "Prepare a figure for print: trim uniform background, resize towards an 8-inch width at the target DPI, then boost contrast and sharpness.",
			InputSchema: schema([]string{"input"}, map[string]interface{}{
				"input":   prop("string", "Absolute path to the figure"),
				"output":  prop("string", "Output path. Default <name>_optimized<ext> next to the input"),
				"dpi":     propDefault("integer", "Target print resolution", 300),
				"quality": prop("integer", "JPEG quality 1-100"),
				"no_crop": propDefault("boolean", "Skip whitespace trimming", false),
			}),
		},
	}
}
