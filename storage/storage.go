package storage

import (
	"drive/config"
	"drive/db"
	"io"
	"log"
	"net/http"
)

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage map[uint64]StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "default",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	cachedStorage = map[uint64]StorageAPI{}
	for i := range buckets {
		bucket := buckets[i]
		if bucket.StorageType == StorageTypeS3 {
			cachedStorage[bucket.ID] = NewS3Storage(&bucket)
		} else {
			cachedStorage[bucket.ID] = NewDiskStorage(&bucket)
		}
	}
}

// GetDefaultStorage returns the bucket new uploads go to, nil if none is configured
func GetDefaultStorage() StorageAPI {
	for _, storage := range cachedStorage {
		return storage
	}
	return nil
}

func GetStorageForBucket(bucketID uint64) StorageAPI {
	return cachedStorage[bucketID]
}
