// Package docs provides the Swagger documentation for the API.
package docs

// @title           Fraud Screening Pipeline
// @version         1.0
// @description     A screening service that runs user-reported messages and screenshots through rate limiting, content sanitization, and an LLM risk-scoring backend.

// @contact.name   API Support
// @contact.url    https://github.com/fraudshield/go-fraud-screening-pipeline

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8082
// @BasePath  /
