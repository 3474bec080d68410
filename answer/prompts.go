package answer

import (
	"fmt"
	"strings"
)

const contextPromptTemplate = `You are a friendly customer support assistant for an online shop.
Answer the customer's question using the website content below. If the content does not
cover the question, say so briefly and suggest contacting the support team.

Website content:
%s

Customer question: %s

Answer:`

const barePromptTemplate = `You are a friendly customer support assistant for an online shop.
Answer the customer's question concisely and politely. If you are not sure, suggest
contacting the support team.

Customer question: %s

Answer:`

// BuildPrompt returns the context-augmented prompt when relevantContext has
// any non-space content, and the bare-question prompt otherwise.
func BuildPrompt(query, relevantContext string) string {
	if strings.TrimSpace(relevantContext) == "" {
		return fmt.Sprintf(barePromptTemplate, query)
	}
	return fmt.Sprintf(contextPromptTemplate, relevantContext, query)
}
