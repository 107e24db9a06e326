package app

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// Placeholder video IDs used when search is unavailable. Selection is seeded
// from the topic so repeated calls stay stable.
var fallbackVideoIDs = []string{
	"W6NZfCO5SIk", "rfscVS0vtbw", "t0Cq6tVNRBA", "RBSGKlAvoiM",
	"09_LlHjoEiY", "KEEKn7Me-ms", "PkZNo7MFNFg", "fBNz5xF-Kx4",
}

// FallbackLesson deterministically synthesizes a complete, schema-valid
// lesson for a topic. It performs no I/O and never fails: this is the safety
// net behind every model, extraction and validation failure.
func FallbackLesson(topic string, difficulty domain.Difficulty) domain.LessonContent {
	topic = sanitizeTopic(topic)
	level := domain.ClampDifficultyLevel(int(difficulty))

	return domain.LessonContent{
		Title:       "Introduction to " + topic,
		Description: fmt.Sprintf("A comprehensive introduction to %s covering fundamental concepts and practical applications.", topic),
		Body:        fallbackBody(topic, difficulty),
		AssignmentLatex: fmt.Sprintf(`\documentclass{article}
\usepackage{amsmath}
\title{%s Practice Assignment}
\author{GyanForge}
\date{\today}

\begin{document}
\maketitle

\section{Exercise 1}
Write a brief explanation of what you learned about %s.

\section{Exercise 2}
Complete the following practice problems:
\begin{enumerate}
\item Describe the main concepts of %s
\item Provide an example of how %s is used
\item List three benefits of learning %s
\end{enumerate}

\section{Reflection}
Write a short paragraph about how you plan to apply %s in your learning journey.

\end{document}`, topic, topic, topic, topic, topic, topic),
		Quiz:            FallbackQuiz(topic, difficulty),
		DifficultyLevel: level,
		Prerequisites:   []string{"Basic computer knowledge", "Willingness to learn"},
		VideoLinks:      []domain.VideoRef{},
	}
}

// FallbackQuiz produces three questions that always satisfy the quiz
// invariants for any topic string.
func FallbackQuiz(topic string, _ domain.Difficulty) domain.Quiz {
	topic = sanitizeTopic(topic)
	return domain.Quiz{Questions: []domain.Question{
		{
			Text: fmt.Sprintf("What is the main purpose of learning %s?", topic),
			Type: domain.QuestionMultipleChoice,
			Options: []string{
				"To build fundamental knowledge",
				"To complete assignments only",
				"To pass tests",
				"None of the above",
			},
			CorrectAnswer: "To build fundamental knowledge",
			Explanation:   fmt.Sprintf("Learning %s builds a foundation for understanding more advanced concepts.", topic),
		},
		{
			Text: fmt.Sprintf("Which of the following is a key benefit of studying %s?", topic),
			Type: domain.QuestionMultipleChoice,
			Options: []string{
				"Improved problem-solving skills",
				"Better understanding of the subject",
				"Enhanced learning abilities",
				"All of the above",
			},
			CorrectAnswer: "All of the above",
			Explanation:   fmt.Sprintf("Studying %s provides multiple benefits including improved skills and understanding.", topic),
		},
		{
			Text:          fmt.Sprintf("True or False: %s has real-world applications.", topic),
			Type:          domain.QuestionTrueFalse,
			CorrectAnswer: "true",
			Explanation:   "Most educational topics have practical real-world applications.",
		},
	}}
}

// FallbackVideos returns exactly five deterministic placeholder videos whose
// titles embed the topic.
func FallbackVideos(topic string) []domain.VideoRef {
	topic = sanitizeTopic(topic)
	seed := topicSeed(topic)

	videos := make([]domain.VideoRef, 0, 5)
	labels := []string{
		"Introduction to %s",
		"%s Explained Simply",
		"%s Fundamentals",
		"Practical %s Examples",
		"%s - Common Mistakes to Avoid",
	}
	for i, label := range labels {
		id := fallbackVideoIDs[(seed+uint32(i))%uint32(len(fallbackVideoIDs))]
		videos = append(videos, domain.VideoRef{
			Title:     fmt.Sprintf(label, topic),
			URL:       "https://www.youtube.com/watch?v=" + id,
			Thumbnail: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg",
			Duration:  fmt.Sprintf("%d:%02d", 8+(int(seed)+i*3)%20, (int(seed)*7+i*11)%60),
		})
	}
	return videos
}

// FallbackPath builds the standard three-stage beginner-to-advanced plan.
func FallbackPath(goal string) domain.LearningPath {
	goal = sanitizeTopic(goal)
	return domain.LearningPath{
		Goal: goal,
		Stages: []domain.PathStage{
			{
				Title:         "Introduction to " + goal,
				Description:   fmt.Sprintf("Basic concepts and foundations of %s", goal),
				Difficulty:    domain.DifficultyBeginner.Label(),
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Intermediate " + goal,
				Description:   fmt.Sprintf("Building on the basics of %s", goal),
				Difficulty:    domain.DifficultyIntermediate.Label(),
				EstimatedTime: "3 hours",
			},
			{
				Title:         "Advanced " + goal,
				Description:   fmt.Sprintf("Advanced concepts and applications of %s", goal),
				Difficulty:    domain.DifficultyAdvanced.Label(),
				EstimatedTime: "4 hours",
			},
		},
		Reasoning: fmt.Sprintf("Structured path for %s based on standard curriculum progression.", goal),
	}
}

func fallbackBody(topic string, difficulty domain.Difficulty) string {
	return fmt.Sprintf(`# %[1]s

## Overview
This module provides a solid foundation in %[1]s, designed for %[2]s learners.

## Learning Objectives
By the end of this module, you will:
- Understand the basic concepts of %[1]s
- Be able to apply fundamental principles
- Have hands-on experience with practical examples

## What is %[1]s?
%[1]s is an important area of study. Understanding its principles will help
you build a strong foundation for advanced topics.

## Key Concepts
1. **Fundamentals**: Core principles and basic understanding
2. **Applications**: Real-world use cases and examples
3. **Best Practices**: Tips and techniques for effective learning

## Next Steps
Continue practicing and exploring more advanced topics related to %[1]s.
`, topic, strings.ToLower(difficulty.Label()))
}

// sanitizeTopic keeps templated text readable for hostile or empty input.
func sanitizeTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "General Learning"
	}
	return topic
}

func topicSeed(topic string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(topic)))
	return h.Sum32()
}
