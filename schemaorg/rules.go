package schemaorg

import "github.com/fwojciec/ldcurate"

// Common expected-type sets.
var (
	agent = []string{"Person", "Organization"}
	image = []string{"ImageObject", "URL"}
)

// builtinRules are the Google rich-result requirements per Schema.org type.
var builtinRules = []ldcurate.RuleSet{
	{
		Type:        "Article",
		Required:    []string{"headline", "image", "datePublished", "author"},
		Recommended: []string{"dateModified", "publisher", "description", "mainEntityOfPage"},
		ExpectedTypes: map[string][]string{
			"author":    agent,
			"publisher": {"Organization"},
			"image":     image,
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "NewsArticle",
		Required:    []string{"headline", "image", "datePublished", "author"},
		Recommended: []string{"dateModified", "publisher", "description", "mainEntityOfPage"},
		ExpectedTypes: map[string][]string{
			"author":    agent,
			"publisher": {"Organization"},
			"image":     image,
		},
		ParentTypes: []string{"Article", "CreativeWork", "Thing"},
	},
	{
		Type:        "BlogPosting",
		Required:    []string{"headline", "image", "datePublished", "author"},
		Recommended: []string{"dateModified", "publisher", "description"},
		ExpectedTypes: map[string][]string{
			"author":    agent,
			"publisher": {"Organization"},
		},
		ParentTypes: []string{"Article", "CreativeWork", "Thing"},
	},
	{
		Type:        "Product",
		Required:    []string{"name"},
		Recommended: []string{"image", "description", "brand", "offers", "aggregateRating", "review", "sku", "gtin"},
		ExpectedTypes: map[string][]string{
			"brand":           {"Brand", "Organization"},
			"offers":          {"Offer", "AggregateOffer"},
			"aggregateRating": {"AggregateRating"},
			"review":          {"Review"},
		},
		ParentTypes: []string{"Thing"},
	},
	{
		Type:        "Offer",
		Required:    []string{"price", "priceCurrency"},
		Recommended: []string{"availability", "url", "priceValidUntil", "itemCondition"},
		ExpectedTypes: map[string][]string{
			"seller": {"Organization", "Person"},
		},
		ParentTypes: []string{"Intangible", "Thing"},
	},
	{
		Type:        "AggregateRating",
		Required:    []string{"ratingValue", "ratingCount"},
		Recommended: []string{"bestRating", "worstRating"},
		ParentTypes: []string{"Rating", "Intangible", "Thing"},
	},
	{
		Type:        "Review",
		Required:    []string{"reviewRating", "author"},
		Recommended: []string{"datePublished", "reviewBody"},
		ExpectedTypes: map[string][]string{
			"author":       agent,
			"reviewRating": {"Rating"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:     "Recipe",
		Required: []string{"name", "image"},
		Recommended: []string{
			"author", "datePublished", "description", "recipeIngredient", "recipeInstructions",
			"totalTime", "recipeCuisine", "recipeYield", "nutrition", "aggregateRating",
		},
		ExpectedTypes: map[string][]string{
			"author":             agent,
			"nutrition":          {"NutritionInformation"},
			"recipeInstructions": {"HowToStep", "HowToSection"},
			"aggregateRating":    {"AggregateRating"},
		},
		ParentTypes: []string{"HowTo", "CreativeWork", "Thing"},
	},
	{
		Type:        "NutritionInformation",
		Recommended: []string{"calories", "fatContent", "proteinContent", "carbohydrateContent"},
		ParentTypes: []string{"StructuredValue", "Intangible", "Thing"},
	},
	{
		Type:        "HowTo",
		Required:    []string{"name", "step"},
		Recommended: []string{"image", "totalTime", "estimatedCost", "supply", "tool"},
		ExpectedTypes: map[string][]string{
			"step":   {"HowToStep", "HowToSection"},
			"supply": {"HowToSupply", "Text"},
			"tool":   {"HowToTool", "Text"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "HowToStep",
		Required:    []string{"text"},
		Recommended: []string{"image", "name", "url"},
		ExpectedTypes: map[string][]string{
			"image": image,
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:     "FAQPage",
		Required: []string{"mainEntity"},
		ExpectedTypes: map[string][]string{
			"mainEntity": {"Question"},
		},
		ParentTypes: []string{"WebPage", "CreativeWork", "Thing"},
	},
	{
		Type:        "Question",
		Required:    []string{"name", "acceptedAnswer"},
		Recommended: []string{"author", "dateCreated"},
		ExpectedTypes: map[string][]string{
			"acceptedAnswer": {"Answer"},
			"author":         agent,
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "Answer",
		Required:    []string{"text"},
		Recommended: []string{"author", "dateCreated", "upvoteCount"},
		ExpectedTypes: map[string][]string{
			"author": agent,
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:     "QAPage",
		Required: []string{"mainEntity"},
		ExpectedTypes: map[string][]string{
			"mainEntity": {"Question"},
		},
		ParentTypes: []string{"WebPage", "CreativeWork", "Thing"},
	},
	{
		Type:        "Organization",
		Required:    []string{"name"},
		Recommended: []string{"url", "logo", "contactPoint", "sameAs", "address"},
		ExpectedTypes: map[string][]string{
			"logo":         image,
			"contactPoint": {"ContactPoint"},
			"address":      {"PostalAddress"},
		},
		ParentTypes: []string{"Thing"},
	},
	{
		Type:        "LocalBusiness",
		Required:    []string{"name", "address"},
		Recommended: []string{"telephone", "openingHours", "geo", "priceRange", "image"},
		ExpectedTypes: map[string][]string{
			"address": {"PostalAddress"},
			"geo":     {"GeoCoordinates"},
		},
		ParentTypes: []string{"Organization", "Thing"},
	},
	{
		Type:        "Person",
		Required:    []string{"name"},
		Recommended: []string{"url", "image", "jobTitle", "worksFor", "sameAs", "email"},
		ExpectedTypes: map[string][]string{
			"worksFor": {"Organization"},
			"image":    image,
		},
		ParentTypes: []string{"Thing"},
	},
	{
		Type:        "Event",
		Required:    []string{"name", "startDate", "location"},
		Recommended: []string{"endDate", "image", "description", "offers", "performer", "organizer"},
		ExpectedTypes: map[string][]string{
			"location":  {"Place", "VirtualLocation"},
			"offers":    {"Offer"},
			"performer": agent,
			"organizer": agent,
		},
		ParentTypes: []string{"Thing"},
	},
	{
		Type:        "Place",
		Required:    []string{"name"},
		Recommended: []string{"address", "geo"},
		ExpectedTypes: map[string][]string{
			"address": {"PostalAddress"},
			"geo":     {"GeoCoordinates"},
		},
		ParentTypes: []string{"Thing"},
	},
	{
		Type:     "JobPosting",
		Required: []string{"title", "description", "datePosted", "hiringOrganization"},
		Recommended: []string{
			"baseSalary", "employmentType", "jobLocation",
			"validThrough", "qualifications", "responsibilities",
		},
		ExpectedTypes: map[string][]string{
			"hiringOrganization": {"Organization"},
			"jobLocation":        {"Place"},
			"baseSalary":         {"MonetaryAmount"},
		},
		ParentTypes: []string{"Intangible", "Thing"},
	},
	{
		Type:        "Course",
		Required:    []string{"name", "description"},
		Recommended: []string{"provider", "offers", "hasCourseInstance"},
		ExpectedTypes: map[string][]string{
			"provider": {"Organization"},
			"offers":   {"Offer"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "VideoObject",
		Required:    []string{"name", "description", "thumbnailUrl", "uploadDate"},
		Recommended: []string{"duration", "contentUrl", "embedUrl", "interactionStatistic"},
		ExpectedTypes: map[string][]string{
			"thumbnailUrl": image,
		},
		ParentTypes: []string{"MediaObject", "CreativeWork", "Thing"},
	},
	{
		Type:        "WebPage",
		Required:    []string{"name"},
		Recommended: []string{"url", "description", "breadcrumb"},
		ExpectedTypes: map[string][]string{
			"breadcrumb": {"BreadcrumbList"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:     "BreadcrumbList",
		Required: []string{"itemListElement"},
		ExpectedTypes: map[string][]string{
			"itemListElement": {"ListItem"},
		},
		ParentTypes: []string{"ItemList", "Intangible", "Thing"},
	},
	{
		Type:        "Book",
		Required:    []string{"name", "author"},
		Recommended: []string{"isbn", "bookFormat", "publisher", "datePublished", "aggregateRating"},
		ExpectedTypes: map[string][]string{
			"author":    agent,
			"publisher": {"Organization"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "SoftwareApplication",
		Required:    []string{"name"},
		Recommended: []string{"offers", "aggregateRating", "operatingSystem", "applicationCategory", "description"},
		ExpectedTypes: map[string][]string{
			"offers":          {"Offer"},
			"aggregateRating": {"AggregateRating"},
		},
		ParentTypes: []string{"CreativeWork", "Thing"},
	},
	{
		Type:        "Thing",
		Recommended: []string{"name", "description", "url", "image"},
	},
	{
		Type:        "CreativeWork",
		Required:    []string{"name"},
		Recommended: []string{"author", "datePublished", "description"},
		ExpectedTypes: map[string][]string{
			"author": agent,
		},
		ParentTypes: []string{"Thing"},
	},
}

// builtinLineage lists Schema.org subtypes that have no rules of their
// own. Each maps to its ancestor chain, nearest first; the nearest
// ancestor with rules supplies them.
var builtinLineage = map[string][]string{
	// Articles and reviews.
	"TechArticle":          {"Article", "CreativeWork", "Thing"},
	"ScholarlyArticle":     {"Article", "CreativeWork", "Thing"},
	"Report":               {"Article", "CreativeWork", "Thing"},
	"SocialMediaPosting":   {"Article", "CreativeWork", "Thing"},
	"LiveBlogPosting":      {"BlogPosting", "SocialMediaPosting", "Article", "CreativeWork", "Thing"},
	"AnalysisNewsArticle":  {"NewsArticle", "Article", "CreativeWork", "Thing"},
	"OpinionNewsArticle":   {"NewsArticle", "Article", "CreativeWork", "Thing"},
	"ReportageNewsArticle": {"NewsArticle", "Article", "CreativeWork", "Thing"},
	"ReviewNewsArticle":    {"NewsArticle", "CriticReview", "Review", "CreativeWork", "Thing"},
	"CriticReview":         {"Review", "CreativeWork", "Thing"},
	"UserReview":           {"Review", "CreativeWork", "Thing"},

	// Other creative works.
	"Movie":             {"CreativeWork", "Thing"},
	"MusicRecording":    {"CreativeWork", "Thing"},
	"Podcast":           {"CreativeWork", "Thing"},
	"Dataset":           {"CreativeWork", "Thing"},
	"WebSite":           {"CreativeWork", "Thing"},
	"ImageObject":       {"MediaObject", "CreativeWork", "Thing"},
	"AudioObject":       {"MediaObject", "CreativeWork", "Thing"},
	"HowToSection":      {"ItemList", "CreativeWork", "Thing"},
	"ItemPage":          {"WebPage", "CreativeWork", "Thing"},
	"AboutPage":         {"WebPage", "CreativeWork", "Thing"},
	"ContactPage":       {"WebPage", "CreativeWork", "Thing"},
	"CollectionPage":    {"WebPage", "CreativeWork", "Thing"},
	"ProfilePage":       {"WebPage", "CreativeWork", "Thing"},
	"SearchResultsPage": {"WebPage", "CreativeWork", "Thing"},
	"MobileApplication": {"SoftwareApplication", "CreativeWork", "Thing"},
	"WebApplication":    {"SoftwareApplication", "CreativeWork", "Thing"},
	"VideoGame":         {"SoftwareApplication", "Game", "CreativeWork", "Thing"},

	// Organizations and businesses.
	"Corporation":             {"Organization", "Thing"},
	"NGO":                     {"Organization", "Thing"},
	"EducationalOrganization": {"Organization", "Thing"},
	"NewsMediaOrganization":   {"Organization", "Thing"},
	"Restaurant":              {"FoodEstablishment", "LocalBusiness", "Organization", "Thing"},
	"Store":                   {"LocalBusiness", "Organization", "Thing"},
	"Hotel":                   {"LodgingBusiness", "LocalBusiness", "Organization", "Thing"},
	"MedicalClinic":           {"MedicalBusiness", "LocalBusiness", "Organization", "Thing"},
	"ProfessionalService":     {"LocalBusiness", "Organization", "Thing"},

	// Events, products and offers.
	"BusinessEvent":     {"Event", "Thing"},
	"MusicEvent":        {"Event", "Thing"},
	"SportsEvent":       {"Event", "Thing"},
	"EducationEvent":    {"Event", "Thing"},
	"ProductModel":      {"Product", "Thing"},
	"IndividualProduct": {"Product", "Thing"},
	"AggregateOffer":    {"Offer", "Intangible", "Thing"},
}
