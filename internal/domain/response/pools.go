package response

import "github.com/okian/mindease/internal/domain/stress"

// DefaultPools returns a fresh copy of the built-in replies.
func DefaultPools() Pools {
	return Pools{
		stress.BandHigh: {
			"I hear that you're going through a really tough time. Remember, it's okay to feel overwhelmed - you're human. Let's take this one step at a time. Can you tell me what's weighing on you most right now?",
			"Your feelings are completely valid. When stress feels overwhelming, sometimes the best thing we can do is pause and breathe. Would you like to try a quick breathing exercise with me?",
			"I can sense you're carrying a heavy load. Remember, seeking support shows strength, not weakness. What's one small thing that usually brings you comfort?",
		},
		stress.BandMedium: {
			"It sounds like you're dealing with some challenging feelings. That's completely normal - we all have those days. What's been on your mind lately?",
			"I understand you're feeling frustrated. Sometimes talking through our thoughts can help us see things more clearly. What would you like to explore together?",
			"Life can feel uncertain sometimes, and that's okay. You're taking a positive step by reaching out. How can I support you today?",
		},
		stress.BandLow: {
			"I'm glad to hear you're feeling more positive! It's wonderful when we can find moments of peace. What's been going well for you?",
			"That's great to hear! Maintaining good mental health is just as important as celebrating the good times. How are you taking care of yourself?",
			"It sounds like you're in a good headspace. That's amazing! Is there anything you'd like to talk about or explore while you're feeling centered?",
		},
	}
}
