// Package web renders the public HTML pages: the landing page and explore.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"creatorhub_backend/internal/services/dto"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	LandingTemplate = "landing.html"
	ExploreTemplate = "explore.html"
)

type FAQItem struct {
	ID       string
	Question string
	Answer   string
}

type LandingPage struct {
	Title string
	FAQ   []FAQItem
	Year  int
}

type ExplorePage struct {
	Title string
	Query string
	Posts []dto.ExplorePostDTO
	Total int64
	Year  int
}

var funcs = template.FuncMap{
	"initials": Initials,
	"isVideo":  func(mediaType string) bool { return mediaType == "video" },
	"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

// Templates parses every embedded page; gin serves them via SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}

// Initials is the avatar fallback of a creator card.
func Initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		if r := []rune(strings.TrimSpace(s)); len(r) > 0 {
			b.WriteString(strings.ToUpper(string(r[0])))
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func NewLandingPage(now time.Time) LandingPage {
	return LandingPage{
		Title: "Unleash the Power of UGC for Your Brand",
		FAQ:   DefaultFAQ(),
		Year:  now.Year(),
	}
}

func NewExplorePage(query string, resp *dto.ExploreResponse, now time.Time) ExplorePage {
	page := ExplorePage{Title: "Explore", Query: query, Year: now.Year()}
	if resp != nil {
		page.Posts = resp.Posts
		page.Total = resp.Total
	}
	return page
}

func DefaultFAQ() []FAQItem {
	return []FAQItem{
		{
			ID:       "item-1",
			Question: "How long does shipping take?",
			Answer:   "Standard shipping takes 3-5 business days, depending on your location. Express shipping options are available at checkout for 1-2 business day delivery.",
		},
		{
			ID:       "item-2",
			Question: "What payment methods do you accept?",
			Answer:   "We accept all major credit cards (Visa, Mastercard, American Express), PayPal, Apple Pay, and Google Pay. For enterprise customers, we also offer invoicing options.",
		},
		{
			ID:       "item-3",
			Question: "Can I change or cancel my order?",
			Answer:   "You can modify or cancel your order within 1 hour of placing it. After this window, please contact our customer support team who will assist you with any changes.",
		},
		{
			ID:       "item-4",
			Question: "Do you ship internationally?",
			Answer:   "Yes, we ship to over 50 countries worldwide. International shipping typically takes 7-14 business days. Additional customs fees may apply depending on your country's import regulations.",
		},
		{
			ID:       "item-5",
			Question: "What is your return policy?",
			Answer:   "We offer a 30-day return policy for most items. Products must be in original condition with tags attached. Some specialty items may have different return terms, which will be noted on the product page.",
		},
	}
}
