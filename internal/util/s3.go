package util

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

func GetDocumentDirectoryPath(documentId string) string {
	return fmt.Sprintf("documents/%s", documentId)
}

func ToDocumentDirectoryPath(documentId string, filename string) string {
	return filepath.Join(GetDocumentDirectoryPath(documentId), filepath.Base(filename))
}

func createBucketIfNotExists(s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(context.Background(), bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Add a prefix to the file name
	// For example, if the file name is "lease.pdf" and the prefix is "documents/123",
	// the resulting name will be "documents/123/lease.pdf"
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

func UploadFileToS3ByFileHeader(fileHeader *multipart.FileHeader, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileName := prepareFileName(fileHeader.Filename, fuo)

	info, err := fuo.S3.PutObject(
		context.Background(),
		fuo.Bucket,
		fileName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// Generates the final file name with uniqueness and prefix
func prepareFileName(originalName string, fuo *FileUploadOptions) string {
	fileName := originalName
	if fuo.UniquePrefix {
		fileName = AddUniquePrefixToFileName(fileName)
	}

	if fuo.DirectoryPath != "" {
		fileName = filepath.Join(fuo.DirectoryPath, fileName)
	}

	return fileName
}

// CopyObjectInS3 duplicates an object within the same bucket, used when a
// document is duplicated so the copy owns its own file reference.
func CopyObjectInS3(s3 *minio.Client, bucket, srcKey, dstKey string) (minio.UploadInfo, error) {
	return s3.CopyObject(
		context.Background(),
		minio.CopyDestOptions{Bucket: bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: bucket, Object: srcKey},
	)
}

// GetPresignedURL returns a time-limited download url for an object. The core
// hands out urls instead of streaming bytes itself.
func GetPresignedURL(s3 *minio.Client, bucket, key string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presigned, err := s3.PresignedGetObject(context.Background(), bucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}

	return presigned.String(), nil
}
