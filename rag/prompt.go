package rag

import (
	"fmt"
	"strings"
)

// SystemInstruction is sent with every generation request.
func SystemInstruction(docsURL string) string {
	return "You are an expert assistant on Chainguard Images. " +
		"Your job is to help users convert Dockerfiles to use Chainguard base images. " +
		"Use only information from " + docsURL + ". " +
		"If you don't know the answer, say so."
}

// ConversionRequest is the question asked for a Dockerfile.
func ConversionRequest(docsURL, dockerfile string) string {
	return "Convert the following Dockerfile to use Chainguard base images. " +
		"Use information from " + docsURL + " to find the equivalent Chainguard base image. " +
		"Use the Overview information to update exposed ports, commands, environmental variables, etc. " +
		"Create multi-stage builds if necessary. " +
		"Explain any changes you make.\n\nDockerfile to convert:\n" + dockerfile
}

// BuildPrompt places retrieved context ahead of the question.
func BuildPrompt(context, question string) string {
	var sb strings.Builder
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	sb.WriteString(context)
	fmt.Fprintf(&sb, "\n\nQuestion: %s\nHelpful Answer:", question)
	return sb.String()
}
