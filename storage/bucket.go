package storage

import (
	"drive/db"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"`
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	AuthDetails string // Authentication details. In case of S3 bucket - "key:secret"
	Region      string `gorm:"type:varchar(50)"`
	Endpoint    string `gorm:"type:varchar(300)"` // Optional, for S3-compatible services
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC creates a S3 client for the bucket
func (b *Bucket) CreateSVC() *s3.S3 {
	parts := strings.SplitN(b.AuthDetails, ":", 2)
	if len(parts) != 2 {
		panic("Bucket AuthDetails must be in key:secret format")
	}
	awsConfig := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(parts[0], parts[1], ""),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&awsConfig)))
}
