package news

import "github.com/metsukeai/metsuke-api/internal/models"

// DefaultImageURL is the static asset used when a story carries no image.
const DefaultImageURL = "/assets/news-placeholder.jpg"

var editorialSource = models.NewsSource{
	Name: "Metsuke Editorial",
	URL:  "https://metsuke.ai",
}

// FallbackPool returns the static stories used to pad the explore feed when
// the remote source comes up short, in padding order. Callers own the slice.
func FallbackPool() []models.NewsItem {
	pool := []models.NewsItem{
		{Title: "The Way of the Neural Network", Description: "Understanding the hidden layers of the digital mind through the lens of ancient strategy.", URL: "https://metsuke.ai/editorial/way-of-the-neural-network"},
		{Title: "Defensive Coding Arts", Description: "Protecting your digital dojo from unseen threats and vulnerabilities.", URL: "https://metsuke.ai/editorial/defensive-coding-arts"},
		{Title: "Vision Algorithms", Description: "How modern systems see the world: a deep dive into computer vision.", URL: "https://metsuke.ai/editorial/vision-algorithms"},
		{Title: "Mastering the API", Description: "Integration techniques for the modern developer.", URL: "https://metsuke.ai/editorial/mastering-the-api"},
		{Title: "Large Models, Small Footprints", Description: "Quantization and distillation strategies for running capable models on modest hardware.", URL: "https://metsuke.ai/editorial/large-models-small-footprints"},
		{Title: "The Discipline of Daily Retraining", Description: "Why continuous evaluation beats one-off benchmarks for production models.", URL: "https://metsuke.ai/editorial/discipline-of-daily-retraining"},
		{Title: "Prompt Craft as a Practice", Description: "Treating prompt design like any other engineering artifact: versioned, reviewed, tested.", URL: "https://metsuke.ai/editorial/prompt-craft-as-a-practice"},
		{Title: "Edge Inference in the Field", Description: "Lessons from deploying vision models on battery-powered devices.", URL: "https://metsuke.ai/editorial/edge-inference-in-the-field"},
		{Title: "Data Pipelines Without Tears", Description: "Idempotent ingestion patterns that survive flaky upstream sources.", URL: "https://metsuke.ai/editorial/data-pipelines-without-tears"},
		{Title: "The Economics of GPU Time", Description: "Budgeting training runs when every hour has a price tag.", URL: "https://metsuke.ai/editorial/economics-of-gpu-time"},
		{Title: "Reading the Opponent: Adversarial Inputs", Description: "How small perturbations fool big models, and what to do about it.", URL: "https://metsuke.ai/editorial/reading-the-opponent"},
		{Title: "Mechatronics Meets Machine Learning", Description: "Closing the loop between perception models and physical actuators.", URL: "https://metsuke.ai/editorial/mechatronics-meets-ml"},
		{Title: "The Quiet Art of Feature Stores", Description: "Keeping training and serving features honest with a single source of truth.", URL: "https://metsuke.ai/editorial/quiet-art-of-feature-stores"},
		{Title: "Synthetic Data, Real Results", Description: "When generated training data helps, and when it quietly poisons the well.", URL: "https://metsuke.ai/editorial/synthetic-data-real-results"},
		{Title: "Observability for Model Servers", Description: "Latency histograms, drift alarms, and the dashboards that actually get read.", URL: "https://metsuke.ai/editorial/observability-for-model-servers"},
		{Title: "A Philosophy of Interfaces", Description: "Why the shape of an API says more about a team than its documentation.", URL: "https://metsuke.ai/editorial/philosophy-of-interfaces"},
		{Title: "Design Systems for Engineers", Description: "Making consistent products without a designer on every call.", URL: "https://metsuke.ai/editorial/design-systems-for-engineers"},
		{Title: "Retrieval Before Generation", Description: "Grounding assistant answers in documents you can actually cite.", URL: "https://metsuke.ai/editorial/retrieval-before-generation"},
		{Title: "The Long Tail of Tokenization", Description: "Where multilingual text breaks naive pipelines.", URL: "https://metsuke.ai/editorial/long-tail-of-tokenization"},
		{Title: "Shipping Models Like Software", Description: "Versioned artifacts, canary rollouts, and rollback plans for ML systems.", URL: "https://metsuke.ai/editorial/shipping-models-like-software"},
		{Title: "On-Device Privacy by Construction", Description: "Architectures that never let raw user data leave the client.", URL: "https://metsuke.ai/editorial/on-device-privacy"},
		{Title: "The Maintenance Mindset", Description: "Most of an engineer's career is spent on systems someone else built.", URL: "https://metsuke.ai/editorial/maintenance-mindset"},
		{Title: "Benchmarks Lie, Users Don't", Description: "Closing the gap between leaderboard scores and production satisfaction.", URL: "https://metsuke.ai/editorial/benchmarks-lie"},
		{Title: "Calm Technology for Busy Minds", Description: "Designing assistants that interrupt less and help more.", URL: "https://metsuke.ai/editorial/calm-technology"},
	}

	for i := range pool {
		pool[i].ImageURL = DefaultImageURL
		pool[i].Source = editorialSource
	}
	return pool
}
