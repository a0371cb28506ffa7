package projects

type CreateProjectRequest struct {
	Name        string `json:"name"        form:"name"        binding:"required,max=200"`
	Description string `json:"description" form:"description"`
	Color       string `json:"color"       form:"color"`
}

// UpdateProjectRequest changes only the fields that are present.
type UpdateProjectRequest struct {
	Name        *string `json:"name"        form:"name"`
	Description *string `json:"description" form:"description"`
	Color       *string `json:"color"       form:"color"`
}

type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
}
