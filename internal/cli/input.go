package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword и isTerminal подменяются в тестах, чтобы не трогать терминал.
//
//nolint:gochecknoglobals // Точки подмены для тестов
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// noTerminal - значение terminalFd, когда ввод не является терминалом.
const noTerminal = -1

// terminalFd возвращает дескриптор in, если это терминал.
func terminalFd(in io.Reader) int {
	f, ok := in.(interface{ Fd() uintptr })
	if !ok {
		return noTerminal
	}
	fd := int(f.Fd())
	if !isTerminal(fd) {
		return noTerminal
	}
	return fd
}

// readLine выводит подсказку и читает одну строку.
// Если EOF пришел после ввода, возвращается прочитанная часть.
func readLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret читает пароль. С терминала пароль читается без эха,
// из канала или файла - как обычная строка.
func readSecret(reader *bufio.Reader, fd int, w io.Writer) (string, error) {
	if fd == noTerminal {
		pw, err := readLine(reader, "Пароль", w)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return pw, nil
	}

	if _, err := fmt.Fprint(w, "Пароль: "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(pw), nil
}
