/*
Package config loads the settings used to build a dictionary store.

Settings come from three layers, later layers winning:

 1. a .env file in the working directory, when present
 2. a YAML settings file
 3. DICTSTORE_* and provider credential environment variables

A minimal settings file:

	backend: dynamodb
	dynamodb:
	  region: us-east-1
	  table: documents
	retry:
	  max_attempts: 5
	  base_delay: 200ms

Credentials are usually left out of the file and supplied through
AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY or AZURE_STORAGE_ACCOUNT /
AZURE_STORAGE_KEY.
*/
package config
