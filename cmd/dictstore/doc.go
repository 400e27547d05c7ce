// Command dictstore is an operator CLI for a dictionary store table holding
// documents.
//
// The backend and its credentials come from a settings file (--config), a
// .env file and the environment; see package config.
//
//	# Create the table
//	dictstore setup
//
//	# Write and read a document
//	dictstore put --partition team-a --id readme --json '{"title":"Hello","tags":["intro"]}'
//	dictstore get --partition team-a --id readme
//
//	# Stream a partition, then drop it
//	dictstore list --partition team-a --page-size 50
//	dictstore delete-partition --partition team-a
//
// # Environment Variables
//
//   - DICTSTORE_BACKEND: dynamodb or azuretable
//   - DICTSTORE_TABLE: table name
//   - DICTSTORE_REGION: DynamoDB region
//   - DICTSTORE_ENDPOINT: service endpoint override
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY: DynamoDB credentials
//   - AZURE_STORAGE_ACCOUNT, AZURE_STORAGE_KEY: Azure Table credentials
package main
