// file: dto/project.go
package dto

// ProjectFields 作品的可编辑字段
type ProjectFields struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DemoURL       string `json:"demo_url"`
	RepoURL       string `json:"repo_url"`
	VideoURL      string `json:"video_url"`
	AttachmentURL string `json:"attachment_url"`
}
