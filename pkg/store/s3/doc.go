// Package s3 stores accounts as one JSON object in an S3 compatible bucket.
//
// A missing object reads as no accounts. Every Save uploads the full list.
// Set Endpoint and ForcePathStyle to talk to MinIO or another S3 compatible
// service.
package s3
