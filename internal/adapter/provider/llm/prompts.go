package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

const wordSchema = `{
  "word": "<headword>",
  "ipa": "<IPA transcription>",
  "definition": "<simple English definition>",
  "vietnameseDefinition": "<Vietnamese meaning>",
  "example": "<natural English example sentence>",
  "level": "<CEFR level or band>",
  "topic": "<topic>",
  "rootAnalysis": {"root": "", "prefix": "", "suffix": "", "explanation": ""},
  "synonyms": ["..."],
  "antonyms": ["..."],
  "paraphrases": ["<academic paraphrase>"],
  "mnemonicHint": "<memorable hint in Vietnamese>"
}`

func batchPrompt(topic string, count int, level string) string {
	return fmt.Sprintf(`You are an English teacher for Vietnamese learners.
Create %d useful English vocabulary words on the topic %q for a learner at level %s.

Output ONLY a JSON array of %d objects, each matching this schema:
%s

Rules:
- Every word is different and fits the topic and level
- Definitions are short and clear; examples use the word naturally
- The mnemonic hint is in Vietnamese and easy to remember
- Leave rootAnalysis fields empty when the word has no useful root
- Output ONLY the JSON, no markdown, no explanations`, count, topic, level, count, wordSchema)
}

func wordPrompt(word, level string) string {
	return fmt.Sprintf(`You are an English teacher for Vietnamese learners.
Analyze the English word %q for a learner at level %s.

Output ONLY a JSON object matching this schema:
%s

Output ONLY the JSON, no markdown, no explanations`, word, level, wordSchema)
}

func passagePrompt(words []string, level string) string {
	return fmt.Sprintf(`Write 2 short, engaging reading passages for an English learner at level %s.
Each passage must use several of these words: %s.

Output ONLY a JSON array of objects matching this schema:
{
  "title": "<title>",
  "contentEn": "<passage in English>",
  "contentVi": "<Vietnamese translation>",
  "questions": [{"question": "<comprehension question>", "options": ["a", "b", "c", "d"], "answer": "<one of options>"}]
}

Output ONLY the JSON, no markdown, no explanations`, level, strings.Join(words, ", "))
}

type quizWord struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

func quizPrompt(records []domain.VocabularyRecord) string {
	words := make([]quizWord, len(records))
	for i, r := range records {
		words[i] = quizWord{ID: r.ID, Word: r.Word, Definition: r.Definition, Example: r.Example}
	}
	list, _ := json.Marshal(words)

	return fmt.Sprintf(`Create a vocabulary quiz with one question per word below.
Mix "multiple-choice" questions (pick the meaning) and "context-fill" questions (pick the word that fits a sentence).

Words:
%s

Output ONLY a JSON array of objects matching this schema:
{
  "type": "multiple-choice" | "context-fill",
  "question": "<question text>",
  "options": ["<4 options>"],
  "correctAnswer": "<one of options>",
  "explanation": "<short explanation>",
  "wordId": "<id of the word being tested>"
}

Output ONLY the JSON, no markdown, no explanations`, list)
}

func evaluationPrompt(word, sentence string) string {
	return fmt.Sprintf(`A learner wrote this sentence to practice the word %q:
%q

Grade it from 0 to 10 for correct and natural use of the word.

Output ONLY a JSON object matching this schema:
{
  "score": <integer 0-10>,
  "feedback": "<one or two encouraging sentences>",
  "correction": "<corrected sentence, or the original when already correct>",
  "translation": "<Vietnamese translation of the corrected sentence>"
}

Output ONLY the JSON, no markdown, no explanations`, word, sentence)
}

func motivationPrompt(stats domain.StudyStats) string {
	return fmt.Sprintf(`You are a warm, funny study buddy. The learner has learned %d words and is on a %d-day streak.
Write ONE short encouraging sentence for them. Output only the sentence.`, stats.TotalLearned, stats.Streak)
}
