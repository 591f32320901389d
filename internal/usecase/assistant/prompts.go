package assistant

const requirementsPrompt = `You are a shopping assistant for an online store. Extract the shopper's requirements from the message below.
Respond with JSON only, using exactly these keys:
{"brand": string or null, "minPrice": number or null, "maxPrice": number or null, "features": [strings], "category": string or null, "minRating": number or null, "keywords": [strings]}

Example 1
Message: "Best smartphones under 50000"
JSON: {"brand": null, "minPrice": null, "maxPrice": 50000, "features": [], "category": "smartphone", "minRating": null, "keywords": ["best"]}

Example 2
Message: "Samsung laptop with long battery life and at least 4 stars"
JSON: {"brand": "Samsung", "minPrice": null, "maxPrice": null, "features": ["long battery life"], "category": "laptop", "minRating": 4, "keywords": []}

Example 3
Message: "waterproof running shoes between 2000 and 5000"
JSON: {"brand": null, "minPrice": 2000, "maxPrice": 5000, "features": ["waterproof"], "category": "shoes", "minRating": null, "keywords": ["running"]}

Message: %q
JSON:`

const rankingPrompt = `Rate how well each product matches the shopper's desired features: %s

Products:
%s
Respond with JSON only in this shape:
{"rankings": [{"id": "<product ID>", "relevance": <number between 0 and 1>, "reason": "<one short sentence>"}]}
Include every product ID listed above exactly once.`

const rankingProductLine = `ID: %s | Name: %s | Brand: %s | Price: %.2f | Rating: %.1f (%d reviews) | Description: %s
`

const compositionPrompt = `You are a friendly shopping assistant. The shopper asked: %q

We found %d matching products. The top picks are:
%s
Write a short, friendly reply that acknowledges what the shopper asked for, presents the products above with their price and rating, mentions that %d products matched in total, and offers to refine the search. Do not invent products that are not listed.`

const compositionProductLine = `%d. %s by %s - $%.2f, rated %.1f/5 from %d reviews. %s
`

const reviewSummaryPrompt = `Analyze these product reviews for %q and provide:
1. Three key strengths (pros)
2. Three areas for improvement (cons)
3. Overall sentiment score (1-5)

Format as valid JSON: { "pros": [], "cons": [], "sentiment_score": number }

Reviews:
%s`

const noMatchesResponse = "I couldn't find any products matching your request. Try widening your budget, dropping a brand or category, or describing what you need in different words."
