package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpam(t *testing.T) {
	spam := []string{
		"Aumentar tamaño de fuente",
		"Pagina Anterior",
		"Patrocina un capitulo extra",
		"Invitame un cafe en ko-fi",
		"NT: nota del traductor",
		"TL: translator note",
		"Click to rate this post",
		"[Total: 12 Average: 4.5]",
		"5$ = cap extra",
	}
	for _, s := range spam {
		assert.True(t, IsSpam(s), "expected spam: %q", s)
	}

	narrative := []string{
		"El caballero levantó su espada y miró hacia el horizonte en silencio.",
		"Nadie respondió a su pregunta, así que siguió caminando por el pasillo.",
	}
	for _, s := range narrative {
		assert.False(t, IsSpam(s), "expected narrative: %q", s)
	}
}

func TestIsSpamShortDollarLine(t *testing.T) {
	assert.True(t, IsSpam("Dona 3$ aqui"))
	// Long blocks mentioning money in passing are not spam.
	long := "El mercader pidió 300$ por la reliquia, una suma absurda que nadie en el pueblo podía permitirse pagar jamás."
	assert.False(t, IsSpam(long))
}

func TestCleanContentCollapsesWhitespace(t *testing.T) {
	in := "Primera linea.\n\n\n\n\nSegunda   linea."
	out := CleanContent(in)
	assert.Equal(t, "Primera linea.\n\nSegunda linea.", out)
}

func TestCleanContentStripsSpamLines(t *testing.T) {
	in := "Un parrafo narrativo que habla del protagonista.\nNT: gracias por leer\n42\nOtro parrafo narrativo con mas historia."
	out := CleanContent(in)
	assert.NotContains(t, out, "NT:")
	assert.NotContains(t, out, "42")
	assert.Contains(t, out, "Un parrafo narrativo")
	assert.Contains(t, out, "Otro parrafo narrativo")
}

func TestCleanContentRemovesBoilerplateBlock(t *testing.T) {
	in := "Capitulo real.\n\nSi estas leyendo las novelas en otra pagina eres complice de los gringos que roban el trabajo.\n\nMas capitulo real."
	out := CleanContent(in)
	assert.NotContains(t, out, "gringos")
	assert.Contains(t, out, "Capitulo real.")
	assert.Contains(t, out, "Mas capitulo real.")
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b \n c  "))
}
