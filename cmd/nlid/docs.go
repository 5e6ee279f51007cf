package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/nlid/docs.go` and build with -tags swagger to serve it.
//
// @title           ANLI NLI Inference API
// @version         1.0
// @description     Natural language inference over premise/hypothesis pairs using a fine-tuned DeBERTa-v3-base classifier.
//
// @contact.name   nlid maintainers
// @contact.url    https://github.com/shahyaksh/Multi-Class-Classification-Using-ANLI
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
