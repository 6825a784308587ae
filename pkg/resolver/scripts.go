package resolver

import "fmt"

// scriptedClickScript dispatches a click through the page's own script
// context. Some frameworks ignore synthetic native events but respond to a
// script-invoked .click().
func scriptedClickScript(selector string) string {
	return fmt.Sprintf(`
	(function() {
		const el = document.querySelector(%q);
		if (el) {
			el.scrollIntoView({behavior: 'instant', block: 'center'});
			el.click();
			return true;
		}
		return false;
	})()`, selector)
}

// domAscentScript searches every text-bearing node for the hint, then walks
// upward (bounded) looking for the nearest ancestor with clickable
// semantics. Overlay containers are checked first because dropdown/menu
// frameworks render transient content into a detached overlay root rather
// than inline.
func domAscentScript(hint string) string {
	return fmt.Sprintf(`
	(function() {
		const searchText = %q;

		const overlayContainer = document.querySelector('.cdk-overlay-container');
		if (overlayContainer) {
			const overlayElements = overlayContainer.querySelectorAll(
				'button, a, span, div[role="menuitem"], mat-option, [role="option"], .mat-menu-item, .mat-mdc-menu-item');
			for (const el of overlayElements) {
				if (el.textContent.trim().includes(searchText)) {
					el.scrollIntoView({behavior: 'instant', block: 'center'});
					el.click();
					return 'clicked_in_overlay';
				}
			}
		}

		const walker = document.createTreeWalker(
			document.body,
			NodeFilter.SHOW_TEXT,
			{
				acceptNode: function(node) {
					return node.textContent.includes(searchText) ? NodeFilter.FILTER_ACCEPT : NodeFilter.FILTER_REJECT;
				}
			}
		);

		let textNode;
		while (textNode = walker.nextNode()) {
			let clickable = textNode.parentElement;
			let maxDepth = 10;

			while (clickable && clickable !== document.body && maxDepth > 0) {
				const hasClickHandler = clickable.onclick || clickable.hasAttribute('ng-click') || clickable.hasAttribute('(click)');
				const isButton = clickable.tagName === 'BUTTON';
				const isLink = clickable.tagName === 'A';
				const isMenuTrigger = clickable.hasAttribute('mat-menu-trigger-for') || clickable.hasAttribute('[matMenuTriggerFor]');
				const isStyledButton = clickable.classList.contains('mat-button') || clickable.classList.contains('mat-mdc-button') ||
					clickable.classList.contains('mat-raised-button') || clickable.classList.contains('mat-icon-button');
				const isMenuItem = clickable.classList.contains('mat-menu-item') || clickable.classList.contains('mat-mdc-menu-item');
				const hasRole = ['button', 'link', 'menuitem', 'row'].includes(clickable.getAttribute('role'));
				const isRow = clickable.classList.contains('mat-row') || clickable.classList.contains('mat-mdc-row');

				if (hasClickHandler || isButton || isLink || isMenuTrigger || isStyledButton || isMenuItem || hasRole || isRow) {
					clickable.scrollIntoView({behavior: 'instant', block: 'center'});
					clickable.click();
					return 'clicked_parent';
				}
				clickable = clickable.parentElement;
				maxDepth--;
			}
		}

		const allElements = document.querySelectorAll('*');
		for (const el of allElements) {
			if (el.textContent.includes(searchText) && el.textContent.length < searchText.length + 100) {
				el.scrollIntoView({behavior: 'instant', block: 'center'});
				el.click();
				return 'clicked_element';
			}
		}

		return false;
	})()`, hint)
}
