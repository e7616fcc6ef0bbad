package model

import "mime/multipart"

type UploadFileRequest struct {
	File   *multipart.FileHeader `form:"file" binding:"required"`
	Webdav string                `form:"webdav"`
}

type UploadFileData struct {
	OriginalName      string `json:"original_name"`
	FileName          string `json:"file_name"`
	FileSize          int64  `json:"file_size"`
	FileSizeFormatted string `json:"file_size_formatted"`
	DownloadURL       string `json:"download_url"`
	DirectURL         string `json:"direct_url"`
	WebdavAlias       string `json:"webdav_alias"`
	WebdavName        string `json:"webdav_name"`
	UploadTime        string `json:"upload_time"`
	IsImage           bool   `json:"is_image"`
	MimeType          string `json:"mime_type"`
}

type BackendItem struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type TestConnectionRequest struct {
	Webdav string `form:"webdav" binding:"required"`
}
