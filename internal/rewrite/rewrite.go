// Package rewrite regenerates a scraped post as a complete frontmatter/MDX
// blog document through an OpenAI-compatible chat completion.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voltade/blogpipe/internal/llm"
)

// ErrEmptyCompletion indicates the model returned no usable document body.
var ErrEmptyCompletion = errors.New("empty completion")

// timeNow is swapped in tests to pin the dates embedded in the prompt.
var timeNow = time.Now

// Rewriter regenerates blog posts. The prompt pins the output to a fixed
// frontmatter plus BlogLayout template so the result drops straight into the
// site's content directory.
type Rewriter struct {
	Client llm.Client
	Model  string
	// Author is the byline written into generated frontmatter.
	Author string
	// Slugs overrides the category slug table; nil uses the default.
	Slugs map[string]string
}

// Rewrite produces the full generated document for one post. One call, no
// retry: a failure leaves the entry pending for the next run.
func (r *Rewriter) Rewrite(ctx context.Context, content, title, category string) (string, error) {
	if r.Client == nil || strings.TrimSpace(r.Model) == "" {
		return "", errors.New("rewriter not configured")
	}

	req := openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: r.buildUserMessage(content, title, category)},
		},
		N: 1,
	}
	resp, err := r.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("rewrite call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func (r *Rewriter) buildUserMessage(content, title, category string) string {
	date := timeNow().Format("January 02, 2006")
	slug := CategorySlug(r.Slugs, category)
	author := r.Author
	if author == "" {
		author = "Voltade Team"
	}

	var sb strings.Builder
	sb.WriteString("Regenerate a blog post based on the following content:\n\n")
	sb.WriteString(content)
	sb.WriteString("\n\nIMPORTANT: Return ONLY the blog content. Do NOT wrap your response in markdown code blocks. Start directly with the frontmatter (---).\n")
	sb.WriteString("\nUse this EXACT format structure:\n\n")
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: \"Regenerate from %s\"\n", title))
	sb.WriteString("description: \"Regenerated content based on the original post.\"\n")
	sb.WriteString(fmt.Sprintf("date: %q\n", date))
	sb.WriteString(fmt.Sprintf("category: %s\n", slug))
	sb.WriteString("readTime: \"Generate based on the content length\"\n")
	sb.WriteString(fmt.Sprintf("author: %q\n", author))
	sb.WriteString(fmt.Sprintf("image: \"%s/the title you assigned to the post with whitespaces joined by -\" (e.g. product-updates/strategic-guide-to-funding-grants)\n", slug))
	sb.WriteString(fmt.Sprintf("tags: \"Choose more than one relevant from %v and make them into an array\" (e.g. [\"Product Updates\", \"CRM\"])\n", DisplayCategories))
	sb.WriteString("showSidebar: false\n")
	sb.WriteString("showOutline: true\n")
	sb.WriteString("content: { width: \"100%\" }\n")
	sb.WriteString("---\n\n")
	sb.WriteString("import { BlogLayout } from \"../../layouts/BlogpageLayout.tsx\";\n\n")
	sb.WriteString("export const fm = {\n")
	sb.WriteString("    title: \"Same as the title you assigned to the post\",\n")
	sb.WriteString("    description: \"Same as the description you assigned to the post\",\n")
	sb.WriteString(fmt.Sprintf("    date: %q,\n", date))
	sb.WriteString(fmt.Sprintf("    category: %s,\n", slug))
	sb.WriteString("    readTime: \"Same as the read time you assigned to the post\",\n")
	sb.WriteString(fmt.Sprintf("    author: %q,\n", author))
	sb.WriteString("    image: \"Same as the image you assigned to the post\",\n")
	sb.WriteString("    tags: \"Same as the tags you assigned to the post\",\n")
	sb.WriteString("};\n\n")
	sb.WriteString("<BlogLayout frontmatter={fm}>\n\n")
	sb.WriteString("[The blog content goes here ...]\n\n")
	sb.WriteString("</BlogLayout>\n\n")
	sb.WriteString("REQUIREMENTS:\n")
	sb.WriteString("1. Rewrite the blog post based on the provided content comprehensively\n")
	sb.WriteString("2. Include success optimization tips\n")
	sb.WriteString("3. Make it actionable and strategic\n")
	sb.WriteString("4. DO NOT wrap in markdown code blocks\n")
	sb.WriteString("5. Wrap the content with the frontmatter and layout\n")
	return sb.String()
}
