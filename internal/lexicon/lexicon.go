// Package lexicon holds the fixed keyword tables used to score and annotate
// call transcripts. Table order is significant: it decides tie-breaks and the
// order labels are reported in.
package lexicon

import (
	"strings"

	"callclassifier/internal/domain"
)

const (
	Billing           domain.Category = "billing"
	TechnicalSupport  domain.Category = "technical_support"
	AccountManagement domain.Category = "account_management"
	CustomerService   domain.Category = "customer_service"
	Retention         domain.Category = "retention"
	Sales             domain.Category = "sales"
	Refund            domain.Category = "refund"
	Fraud             domain.Category = "fraud"
)

// Group maps a label to the keywords that trigger it.
type Group struct {
	Label    string
	Keywords []string
}

type CategoryDescription struct {
	Category    domain.Category
	Description string
}

type CategoryKeywords struct {
	Category domain.Category
	Keywords []string
}

var CategoryDescriptions = []CategoryDescription{
	{Billing, "Billing, payments, invoices, and pricing inquiries"},
	{TechnicalSupport, "Network issues, connectivity problems, service troubleshooting"},
	{AccountManagement, "Account changes, plan modifications, account information"},
	{CustomerService, "General inquiries, complaints, escalations"},
	{Retention, "Cancellation prevention, upgrade offers, loyalty programs"},
	{Sales, "New service sales, plan upgrades, promotional offers"},
	{Refund, "Refund requests, credits, compensation"},
	{Fraud, "Fraud detection, security concerns, identity verification"},
}

// CategoryKeywordTable must list the same categories, in the same order, as
// CategoryDescriptions.
var CategoryKeywordTable = []CategoryKeywords{
	{Billing, []string{"bill", "payment", "invoice", "charge", "cost", "price", "amount", "balance"}},
	{TechnicalSupport, []string{"connection", "network", "wifi", "signal", "not working", "issue", "problem", "error"}},
	{AccountManagement, []string{"account", "plan", "change", "update", "modify", "information"}},
	{CustomerService, []string{"complaint", "issue", "help", "support", "problem", "service"}},
	{Retention, []string{"cancel", "leave", "switch", "competitor", "deal", "offer"}},
	{Sales, []string{"upgrade", "new", "package", "plan", "buy", "purchase", "offer"}},
	{Refund, []string{"refund", "credit", "compensation", "return", "money back"}},
	{Fraud, []string{"fraud", "security", "unauthorized", "suspicious", "identity", "verification"}},
}

var (
	NegativeWords = []string{"angry", "frustrated", "unhappy", "disappointed", "problem", "issue", "not working"}
	PositiveWords = []string{"happy", "satisfied", "grateful", "thanks", "appreciate", "working fine"}
)

var (
	UrgentWords  = []string{"urgent", "immediately", "asap", "emergency", "critical", "down"}
	ProblemWords = []string{"problem", "issue"}
)

var Topics = []Group{
	{"billing", []string{"bill", "payment", "invoice", "charge"}},
	{"network", []string{"network", "wifi", "signal", "connection"}},
	{"plan", []string{"plan", "package", "service"}},
	{"outage", []string{"down", "outage", "not working"}},
}

var Services = []Group{
	{"mobile", []string{"mobile", "phone", "cellular", "wireless"}},
	{"internet", []string{"internet", "broadband", "wifi", "data"}},
	{"tv", []string{"tv", "television", "cable", "streaming"}},
	{"home", []string{"home", "residential", "fios"}},
	{"business", []string{"business", "corporate", "enterprise"}},
}

var Issues = []Group{
	{"connectivity", []string{"no signal", "no connection", "can't connect", "wifi down"}},
	{"billing", []string{"wrong charge", "overcharge", "unexpected bill"}},
	{"speed", []string{"slow", "buffering", "lag"}},
	{"outage", []string{"service down", "outage", "not working"}},
}

var Requests = []Group{
	{"discount", []string{"discount", "reduce", "lower price"}},
	{"upgrade", []string{"upgrade", "faster", "more data"}},
	{"cancel", []string{"cancel", "stop service", "leave"}},
	{"credit", []string{"credit", "refund", "compensation"}},
	{"technician", []string{"technician", "repair", "fix it"}},
}

var SentimentMarkers = []Group{
	{"Customer showing frustration", []string{"angry", "frustrated", "upset"}},
	{"Customer expressing gratitude", []string{"thank", "appreciate", "thanks"}},
	{"Time-sensitive issue", []string{"urgent", "immediately", "asap"}},
	{"Potential repeat issue", []string{"first time", "repeat", "again"}},
}

// Categories returns every category key in declaration order.
func Categories() []domain.Category {
	out := make([]domain.Category, 0, len(CategoryKeywordTable))
	for _, ck := range CategoryKeywordTable {
		out = append(out, ck.Category)
	}
	return out
}

func Description(c domain.Category) (string, bool) {
	for _, cd := range CategoryDescriptions {
		if cd.Category == c {
			return cd.Description, true
		}
	}
	return "", false
}

func IsCategory(c domain.Category) bool {
	_, ok := Description(c)
	return ok
}

// CountHits counts how many keywords occur in text. Each keyword contributes
// at most once. text is expected to be lowercased already.
func CountHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Match returns the labels of every group with at least one keyword in text,
// in group order. The result is never nil.
func Match(text string, groups []Group) []string {
	out := []string{}
	for _, g := range groups {
		if ContainsAny(text, g.Keywords) {
			out = append(out, g.Label)
		}
	}
	return out
}
